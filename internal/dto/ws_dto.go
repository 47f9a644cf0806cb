package dto

// WsSubscribeRequest opens a live note feed subscription. The filter
// fields narrow the pushed snapshots; empty fields mean "all".
type WsSubscribeRequest struct {
	Search     string `json:"search"`
	Category   string `json:"category"`
	DateFilter string `json:"dateFilter"`
}
