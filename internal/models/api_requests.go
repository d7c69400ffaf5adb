package models

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// FederatedRequest carries the verified profile claims from an external
// identity provider. Email is the upsert key.
type FederatedRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// SubmitResultRequest is the body of POST /api/game/submit. The client sends
// canonical values; the server rounds them again before persisting.
type SubmitResultRequest struct {
	WPM            float64 `json:"wpm" validate:"min=0"`
	Accuracy       float64 `json:"accuracy" validate:"min=0,max=100"`
	TimeElapsed    float64 `json:"timeElapsed" validate:"min=0"`
	WordsCompleted float64 `json:"wordsCompleted" validate:"min=0"`
	Mode           string  `json:"mode" validate:"required,oneof=time words"`
}

// CreateStatRequest is the unauthenticated direct-insert path (POST /api/stats).
type CreateStatRequest struct {
	UserID         string  `json:"userId" validate:"required"`
	WPM            float64 `json:"wpm" validate:"min=0"`
	Accuracy       float64 `json:"accuracy" validate:"min=0,max=100"`
	TimeElapsed    float64 `json:"timeElapsed" validate:"min=0"`
	WordsCompleted float64 `json:"wordsCompleted" validate:"min=0"`
	Mode           string  `json:"mode" validate:"required"`
}

type CreateAchievementRequest struct {
	UserID      string `json:"userId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type CreateTestimonialRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName" validate:"required"`
	Role     string `json:"role"`
	Image    string `json:"image"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Text     string `json:"text" validate:"required"`
}
