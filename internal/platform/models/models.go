package models

// APIUser is the resolved account behind a presented API key.
type APIUser struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	APIKey             string `json:"-"`
	Role               string `json:"role"`
	UsageCount         int    `json:"usage_count"`
	UsageLimit         int    `json:"usage_limit"`
	SubscriptionStatus string `json:"subscription_status"`
	CreatedAt          int64  `json:"created_at"`
	UpdatedAt          int64  `json:"updated_at"`
}

type ContentItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Featured  bool   `json:"featured"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type Course struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	Description    string  `json:"description,omitempty"`
	InstructorName string  `json:"instructor_name"`
	Category       string  `json:"category"`
	Level          string  `json:"level"`
	Price          float64 `json:"price"`
	Featured       bool    `json:"featured"`
	CreatedBy      string  `json:"created_by,omitempty"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}

type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Featured    bool    `json:"featured"`
	CreatedBy   string  `json:"created_by,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

type QuoteRequest struct {
	ID             string `json:"id"`
	APIUserID      string `json:"api_user_id,omitempty"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	ServiceType    string `json:"service_type"`
	ProjectDetails string `json:"project_details"`
	Budget         string `json:"budget,omitempty"`
	Status         string `json:"status"`
	CreatedAt      int64  `json:"created_at"`
}

type VABooking struct {
	ID            string  `json:"id"`
	APIUserID     string  `json:"api_user_id"`
	ServiceType   string  `json:"service_type"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"duration_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	TotalCost     float64 `json:"total_cost"`
	Status        string  `json:"status"`
	CreatedAt     int64   `json:"created_at"`
}

type JobApplication struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
}

type NewsletterSubscriber struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Source    string `json:"source,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// UsageLog is one append-only audit row per accounted API call.
// The key is denormalized so historical rows survive key rotation.
type UsageLog struct {
	ID         string `json:"id"`
	APIUserID  string `json:"api_user_id,omitempty"`
	APIKey     string `json:"api_key"`
	Endpoint   string `json:"endpoint"`
	Method     string `json:"method"`
	StatusCode int    `json:"status_code"`
	LatencyMs  int64  `json:"latency_ms"`
	IPAddress  string `json:"ip_address"`
	UserAgent  string `json:"user_agent"`
	OS         string `json:"os,omitempty"`
	Browser    string `json:"browser,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}
