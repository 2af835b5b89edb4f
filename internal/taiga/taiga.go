package taiga

// Raw API models. Optional nesting stays as pointers so partially
// populated records survive decoding; the board layer substitutes
// sentinels for whatever is missing.

type AuthRequest struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AuthToken string `json:"auth_token"`
}

type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// BoardURL returns the public project page, falling back to the well-known
// tree.taiga.io path when the API omits the url field.
func (p *Project) BoardURL() string {
	if p.URL != "" {
		return p.URL
	}
	return "https://tree.taiga.io/project/" + p.Slug
}

type Milestone struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	EstimatedStart  *string `json:"estimated_start"`
	EstimatedFinish *string `json:"estimated_finish"`
	Closed          bool    `json:"closed"`
}

type StatusInfo struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	IsClosed bool   `json:"is_closed"`
}

type UserInfo struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name_display"`
	PhotoURL    string `json:"photo"`
	GravatarID  string `json:"gravatar_id"`
	IsActive    bool   `json:"is_active"`
	BigPhotoURL string `json:"big_photo"`
}

type StoryInfo struct {
	ID      int    `json:"id"`
	Ref     int    `json:"ref"`
	Subject string `json:"subject"`
}

type UserStory struct {
	ID                  int         `json:"id"`
	Ref                 int         `json:"ref"`
	Subject             string      `json:"subject"`
	StatusExtraInfo     *StatusInfo `json:"status_extra_info"`
	AssignedToExtraInfo *UserInfo   `json:"assigned_to_extra_info"`
	IsClosed            bool        `json:"is_closed"`
	Milestone           *int        `json:"milestone"`
	TotalPoints         *float64    `json:"total_points"`
}

type Task struct {
	ID                  int         `json:"id"`
	Ref                 int         `json:"ref"`
	Subject             string      `json:"subject"`
	StatusExtraInfo     *StatusInfo `json:"status_extra_info"`
	AssignedToExtraInfo *UserInfo   `json:"assigned_to_extra_info"`
	IsClosed            bool        `json:"is_closed"`
	Milestone           *int        `json:"milestone"`
	UserStory           *int        `json:"user_story"`
	UserStoryExtraInfo  *StoryInfo  `json:"user_story_extra_info"`
}
