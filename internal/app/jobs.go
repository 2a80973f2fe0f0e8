package app

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/talkincode/toughshop/internal/domain"
	"github.com/talkincode/toughshop/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	jobs := []struct {
		spec string
		fn   func()
	}{
		{"@every 1m", a.SchedEvictIdleCarts},
		{"@every 30s", func() {
			go a.SchedSystemMonitorTask()
			go a.SchedProcessMonitorTask()
		}},
		{"@every 5m", a.SchedRefreshCatalog},
		{"@daily", a.SchedClearExpireData},
	}
	for _, job := range jobs {
		if _, err := a.sched.AddFunc(job.spec, job.fn); err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedEvictIdleCarts drops carts whose session has expired
func (a *Application) SchedEvictIdleCarts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	idle := time.Duration(a.appConfig.Shop.CartIdleMinutes) * time.Minute
	a.carts.EvictIdle(idle)
	metrics.SetGauge(MetricActiveCarts, int64(a.carts.Registry().Len()))
}

// SchedRefreshCatalog reloads the product cache when it went stale
func (a *Application) SchedRefreshCatalog() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if err := a.catalog.RefreshIfStale(context.Background()); err != nil {
		zap.L().Error("catalog refresh failed", zap.Error(err))
	}
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100)) // Store as percentage * 100
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.Used/1024/1024)) //nolint:gosec // G115: memory MB value fits in int64
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: PID is always within int32 range
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("toughshop_cpuuse", int64(cpuuse*100))
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("toughshop_memuse", int64(meminfo.RSS/1024/1024)) //nolint:gosec // G115: memory MB value fits in int64
	}
}

// SchedClearExpireData purges checkout logs past their retention
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	idays := a.appConfig.Shop.CheckoutLogDays
	if idays <= 0 {
		idays = 90
	}
	res := a.gormDB.
		Where("opt_time < ?", time.Now().Add(-time.Hour*24*time.Duration(idays))).
		Delete(&domain.CheckoutLog{})
	if res.Error != nil {
		zap.L().Error("failed to clear checkout logs", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		zap.L().Info("expired checkout logs removed", zap.Int64("rows", res.RowsAffected))
	}
}
