package userevents

const (
	TopicName          = "user"
	userRegisteredName = TopicName + ".registered"
)

type UserRegistered struct {
	UserUID string
	Email   string
}

func (e UserRegistered) GetEventTypeName() string {
	return userRegisteredName
}

func (e UserRegistered) GetAggregateName() string {
	return e.UserUID
}
