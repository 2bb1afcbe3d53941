package domain

const (
	AssetTypeVehicle  = "VEHICLE"
	AssetTypeProperty = "PROPERTY"
	AssetTypePerson   = "PERSON"
	AssetTypeProject  = "PROJECT"
	AssetTypeTrip     = "TRIP"
	AssetTypeCustom   = "CUSTOM"
)

const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusOnHold   = "ON_HOLD"
	ProjectStatusDone     = "DONE"
	ProjectStatusArchived = "ARCHIVED"
)

const (
	ObjectiveStatusOpen     = "OPEN"
	ObjectiveStatusAchieved = "ACHIEVED"
	ObjectiveStatusDropped  = "DROPPED"
)

const (
	SprintStatusPlanned = "PLANNED"
	SprintStatusActive  = "ACTIVE"
	SprintStatusClosed  = "CLOSED"
)

const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Notification types. EventReminder entries are deduplicated per
// (user, event, lead offset).
const (
	NotificationEventReminder = "event_reminder"
	NotificationTaskAssigned  = "task_assigned"
	NotificationSprintStarted = "sprint_started"
	NotificationObjectiveDone = "objective_achieved"
)

// AllowedAssetTypes is the validation allow-list for asset creation.
var AllowedAssetTypes = map[string]bool{
	AssetTypeVehicle:  true,
	AssetTypeProperty: true,
	AssetTypePerson:   true,
	AssetTypeProject:  true,
	AssetTypeTrip:     true,
	AssetTypeCustom:   true,
}
