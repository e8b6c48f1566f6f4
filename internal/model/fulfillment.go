package model

type NotifyWinnerRequest struct {
	FulfillmentID string `json:"fulfillment_id"`
}

type NotifyWinnerResponse struct {
	Fulfillment PrizeFulfillment `json:"fulfillment"`
}

type ConfirmAddressRequest struct {
	FulfillmentID   string `json:"fulfillment_id"`
	ShippingAddress string `json:"shipping_address"`
}

type ConfirmAddressResponse struct {
	Fulfillment PrizeFulfillment `json:"fulfillment"`
}

type MarkInvalidAddressRequest struct {
	FulfillmentID string `json:"fulfillment_id"`
}

type MarkInvalidAddressResponse struct {
	Fulfillment PrizeFulfillment `json:"fulfillment"`
}

type ShipPrizeRequest struct {
	FulfillmentID  string `json:"fulfillment_id"`
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

type ShipPrizeResponse struct {
	Fulfillment PrizeFulfillment `json:"fulfillment"`
}

type DeliverPrizeRequest struct {
	FulfillmentID string `json:"fulfillment_id"`
}

type DeliverPrizeResponse struct {
	Fulfillment PrizeFulfillment `json:"fulfillment"`
}

type ForfeitPrizeRequest struct {
	FulfillmentID string `json:"fulfillment_id"`
}

type ForfeitPrizeResponse struct {
	Fulfillment PrizeFulfillment `json:"fulfillment"`
}
