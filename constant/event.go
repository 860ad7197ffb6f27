package constant

// Entity names used in cache keys and entity-change events.
const (
	EntityConvocation = "convocation"
	EntityUser        = "user"
	EntityCall        = "call"
)

// Actions carried by entity-change events.
const (
	EventActionCreated = "created"
	EventActionUpdated = "updated"
	EventActionDeleted = "deleted"
)
