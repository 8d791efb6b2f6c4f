package models

type ChatMessage struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp"`
}
