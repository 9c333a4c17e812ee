package response

type WebhookResponse struct {
	Received bool `json:"received"`
}
