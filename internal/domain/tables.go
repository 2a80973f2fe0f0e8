package domain

var Tables = []interface{}{
	// Catalog
	&Product{},
	// Audit
	&CheckoutLog{},
}
