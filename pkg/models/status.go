package models

// Task statuses. Forward-only by convention (pending → in-progress → completed);
// the store does not enforce the ordering.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task difficulties. Difficulty determines the point award at completion time.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// PointsFor returns the fixed point award for a task difficulty.
// Unknown or missing difficulty awards 0.
func PointsFor(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 50
	case DifficultyMedium:
		return 100
	case DifficultyHard:
		return 200
	default:
		return 0
	}
}

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task types.
const (
	TaskTypeBAU          = "BAU"
	TaskTypeChallenge    = "Challenge"
	TaskTypeAdHoc        = "Ad Hoc"
	TaskTypeProjectBased = "Project-Based"
)

// Departments.
const (
	DepartmentDevelopment = "Development"
	DepartmentDesign      = "Design"
	DepartmentMarketing   = "Marketing"
)

// Assignment markers used in task-create requests. "all" broadcasts to every
// employee; "selected" targets an explicit employee list. Persisted Task rows
// always carry a concrete employee name.
const (
	AssignAll      = "all"
	AssignSelected = "selected"
)

// Roles accepted at login.
const (
	RoleEmployee = "employee"
	RoleEmployer = "employer"
)

// Leaderboard windows.
const (
	WindowWeek    = "week"
	WindowMonth   = "month"
	WindowAllTime = "allTime"
)

// Default limits.
const (
	DefaultLeaderboardLimit    = 5
	DefaultMaxRequestBodyBytes = 1 << 20 // 1 MiB
	DefaultSSEChannelBuffer    = 256
)
