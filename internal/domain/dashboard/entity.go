package dashboard

import "github.com/shopspring/decimal"

// Stats is the operational snapshot for one calendar month.
type Stats struct {
	Year                 int
	Month                int
	DeliveryCount        int
	ActiveStaff          int
	ActiveVehicles       int
	LoadersAvailable     int
	TotalLoadingAmount   decimal.Decimal
	TotalTurnboyPayments decimal.Decimal
	// TotalLoadingAmount + TotalTurnboyPayments
	TotalDeliveriesAmount decimal.Decimal
}
