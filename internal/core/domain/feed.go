package domain

// Feed is the data set a store starts from.
type Feed struct {
	Orders        []Order
	Prices        []PriceData
	Alerts        []ReorderAlert
	Notifications []Notification
}
