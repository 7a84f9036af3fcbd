// Package service
package service

type RequestContactMessage struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

type ResponseContactMessage struct {
	Accepted bool `json:"accepted"`
}

type ContactServiceInterface interface {
	SendContactMessage(req *RequestContactMessage) *ApiResponse[ResponseContactMessage]
}
