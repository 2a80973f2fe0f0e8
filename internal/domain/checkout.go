package domain

import "time"

// CheckoutLog is the audit row written for every completed checkout
type CheckoutLog struct {
	ID         int64     `json:"id,string"`
	SessionID  string    `gorm:"size:64;index" json:"session_id"`
	TotalPrice int64     `json:"total_price"`
	TotalCount int       `json:"total_count"`
	Lines      int       `json:"lines"`
	Summary    string    `gorm:"type:text" json:"summary"`
	OptTime    time.Time `gorm:"index" json:"opt_time"`
}

// TableName Specify table name
func (CheckoutLog) TableName() string {
	return "shop_checkout_log"
}
