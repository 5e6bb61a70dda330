package domain

type Action string

const (
	ActionGetClientData   Action = "getClientData"
	ActionCreateNewOrder  Action = "createNewOrder"
	ActionClientRequest   Action = "clientRequest"
	ActionSendChatMessage Action = "sendChatMessage"
)

// IsRead reports whether the action is sent as a query-string request instead of a JSON body.
func (a Action) IsRead() bool {
	return a == ActionGetClientData
}

func (a Action) IsOrderAction() bool {
	return a == ActionCreateNewOrder || a == ActionClientRequest
}
