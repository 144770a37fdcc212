package gitlab

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Project represents a GitLab project.
type Project struct {
	ID                int        `json:"id"                  yaml:"id"`
	Name              string     `json:"name"                yaml:"name"`
	Path              string     `json:"path"                yaml:"path"`
	PathWithNamespace string     `json:"path_with_namespace" yaml:"path_with_namespace"`
	Description       string     `json:"description"         yaml:"description"`
	DefaultBranch     string     `json:"default_branch"      yaml:"default_branch"`
	Visibility        string     `json:"visibility"          yaml:"visibility"`
	WebURL            string     `json:"web_url"             yaml:"web_url"`
	CreatedAt         *time.Time `json:"created_at"          yaml:"created_at"`
	LastActivityAt    *time.Time `json:"last_activity_at"    yaml:"last_activity_at"`
	Namespace         *Namespace `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// Namespace represents the group or user namespace owning a project.
type Namespace struct {
	ID       int    `json:"id"        yaml:"id"`
	Name     string `json:"name"      yaml:"name"`
	Path     string `json:"path"      yaml:"path"`
	Kind     string `json:"kind"      yaml:"kind"`
	FullPath string `json:"full_path" yaml:"full_path"`
}

// TreeEntry represents a single entry of a repository tree listing.
type TreeEntry struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Path string `json:"path" yaml:"path"`
	Mode string `json:"mode" yaml:"mode"`
}

// File represents a repository file as returned by the files endpoint. The
// content is transported base64-encoded; use DecodeContent to obtain the raw
// bytes.
type File struct {
	FileName     string `json:"file_name"      yaml:"file_name"`
	FilePath     string `json:"file_path"      yaml:"file_path"`
	Size         int    `json:"size"           yaml:"size"`
	Encoding     string `json:"encoding"       yaml:"encoding"`
	Content      string `json:"content"        yaml:"content"`
	ContentSHA   string `json:"content_sha256" yaml:"content_sha256"`
	Ref          string `json:"ref"            yaml:"ref"`
	BlobID       string `json:"blob_id"        yaml:"blob_id"`
	CommitID     string `json:"commit_id"      yaml:"commit_id"`
	LastCommitID string `json:"last_commit_id" yaml:"last_commit_id"`
}

// DecodeContent returns the decoded file content.
func (f *File) DecodeContent() ([]byte, error) {
	if f.Encoding != "base64" {
		return []byte(f.Content), nil
	}

	data, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil {
		return nil, fmt.Errorf("decoding file content: %w", err)
	}

	return data, nil
}

// Commit represents a repository commit.
type Commit struct {
	ID             string       `json:"id"              yaml:"id"`
	ShortID        string       `json:"short_id"        yaml:"short_id"`
	Title          string       `json:"title"           yaml:"title"`
	Message        string       `json:"message"         yaml:"message"`
	AuthorName     string       `json:"author_name"     yaml:"author_name"`
	AuthorEmail    string       `json:"author_email"    yaml:"author_email"`
	AuthoredDate   *time.Time   `json:"authored_date"   yaml:"authored_date"`
	CommitterName  string       `json:"committer_name"  yaml:"committer_name"`
	CommitterEmail string       `json:"committer_email" yaml:"committer_email"`
	CommittedDate  *time.Time   `json:"committed_date"  yaml:"committed_date"`
	CreatedAt      *time.Time   `json:"created_at"      yaml:"created_at"`
	ParentIDs      []string     `json:"parent_ids"      yaml:"parent_ids"`
	WebURL         string       `json:"web_url"         yaml:"web_url"`
	Stats          *CommitStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// CommitStats represents line change statistics of a commit.
type CommitStats struct {
	Additions int `json:"additions" yaml:"additions"`
	Deletions int `json:"deletions" yaml:"deletions"`
	Total     int `json:"total"     yaml:"total"`
}

// Diff represents a single file diff of a commit.
type Diff struct {
	OldPath     string `json:"old_path"     yaml:"old_path"`
	NewPath     string `json:"new_path"     yaml:"new_path"`
	AMode       string `json:"a_mode"       yaml:"a_mode"`
	BMode       string `json:"b_mode"       yaml:"b_mode"`
	Diff        string `json:"diff"         yaml:"diff"`
	NewFile     bool   `json:"new_file"     yaml:"new_file"`
	RenamedFile bool   `json:"renamed_file" yaml:"renamed_file"`
	DeletedFile bool   `json:"deleted_file" yaml:"deleted_file"`
}

// Branch represents a repository branch.
type Branch struct {
	Name      string  `json:"name"             yaml:"name"`
	Merged    bool    `json:"merged"           yaml:"merged"`
	Protected bool    `json:"protected"        yaml:"protected"`
	Default   bool    `json:"default"          yaml:"default"`
	CanPush   bool    `json:"can_push"         yaml:"can_push"`
	WebURL    string  `json:"web_url"          yaml:"web_url"`
	Commit    *Commit `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// MergeRequest represents a merge request.
type MergeRequest struct {
	ID           int        `json:"id"               yaml:"id"`
	IID          int        `json:"iid"              yaml:"iid"`
	ProjectID    int        `json:"project_id"       yaml:"project_id"`
	Title        string     `json:"title"            yaml:"title"`
	Description  string     `json:"description"      yaml:"description"`
	State        string     `json:"state"            yaml:"state"`
	SourceBranch string     `json:"source_branch"    yaml:"source_branch"`
	TargetBranch string     `json:"target_branch"    yaml:"target_branch"`
	MergeStatus  string     `json:"merge_status"     yaml:"merge_status"`
	SHA          string     `json:"sha"              yaml:"sha"`
	Draft        bool       `json:"draft"            yaml:"draft"`
	WebURL       string     `json:"web_url"          yaml:"web_url"`
	Author       *User      `json:"author,omitempty" yaml:"author,omitempty"`
	CreatedAt    *time.Time `json:"created_at"       yaml:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"       yaml:"updated_at"`
}

// User represents a GitLab user account.
type User struct {
	ID        int        `json:"id"         yaml:"id"`
	Username  string     `json:"username"   yaml:"username"`
	Name      string     `json:"name"       yaml:"name"`
	Email     string     `json:"email"      yaml:"email"`
	State     string     `json:"state"      yaml:"state"`
	AvatarURL string     `json:"avatar_url" yaml:"avatar_url"`
	WebURL    string     `json:"web_url"    yaml:"web_url"`
	IsAdmin   bool       `json:"is_admin"   yaml:"is_admin"`
	CreatedAt *time.Time `json:"created_at" yaml:"created_at"`
}

// ListProjectsOptions are query parameters for listing projects.
type ListProjectsOptions struct {
	Search     string
	Membership bool
	Owned      bool
	Visibility string
	OrderBy    string
	Sort       string
	Page       int
	PerPage    int
}

// ToValues converts the options into URL query values.
func (o *ListProjectsOptions) ToValues() url.Values {
	values := url.Values{}

	if o.Search != "" {
		values.Set("search", o.Search)
	}

	if o.Membership {
		values.Set("membership", "true")
	}

	if o.Owned {
		values.Set("owned", "true")
	}

	if o.Visibility != "" {
		values.Set("visibility", o.Visibility)
	}

	if o.OrderBy != "" {
		values.Set("order_by", o.OrderBy)
	}

	if o.Sort != "" {
		values.Set("sort", o.Sort)
	}

	addPaging(values, o.Page, o.PerPage)

	return values
}

// ListTreeOptions are query parameters for listing a repository tree. Path is
// passed through as a query parameter without escaping beyond standard query
// encoding.
type ListTreeOptions struct {
	Path      string
	Ref       string
	Recursive bool
	Page      int
	PerPage   int
}

// ToValues converts the options into URL query values.
func (o *ListTreeOptions) ToValues() url.Values {
	values := url.Values{}

	if o.Path != "" {
		values.Set("path", o.Path)
	}

	if o.Ref != "" {
		values.Set("ref", o.Ref)
	}

	if o.Recursive {
		values.Set("recursive", "true")
	}

	addPaging(values, o.Page, o.PerPage)

	return values
}

// ListCommitsOptions are query parameters for listing commits.
type ListCommitsOptions struct {
	RefName string
	Since   *time.Time
	Until   *time.Time
	Path    string
	Page    int
	PerPage int
}

// ToValues converts the options into URL query values.
func (o *ListCommitsOptions) ToValues() url.Values {
	values := url.Values{}

	if o.RefName != "" {
		values.Set("ref_name", o.RefName)
	}

	if o.Since != nil {
		values.Set("since", o.Since.UTC().Format(time.RFC3339))
	}

	if o.Until != nil {
		values.Set("until", o.Until.UTC().Format(time.RFC3339))
	}

	if o.Path != "" {
		values.Set("path", o.Path)
	}

	addPaging(values, o.Page, o.PerPage)

	return values
}

// ListBranchesOptions are query parameters for listing branches.
type ListBranchesOptions struct {
	Search  string
	Page    int
	PerPage int
}

// ToValues converts the options into URL query values.
func (o *ListBranchesOptions) ToValues() url.Values {
	values := url.Values{}

	if o.Search != "" {
		values.Set("search", o.Search)
	}

	addPaging(values, o.Page, o.PerPage)

	return values
}

// ListMergeRequestsOptions are query parameters for listing merge requests.
type ListMergeRequestsOptions struct {
	State        string
	TargetBranch string
	SourceBranch string
	OrderBy      string
	Sort         string
	Page         int
	PerPage      int
}

// ToValues converts the options into URL query values.
func (o *ListMergeRequestsOptions) ToValues() url.Values {
	values := url.Values{}

	if o.State != "" {
		values.Set("state", o.State)
	}

	if o.TargetBranch != "" {
		values.Set("target_branch", o.TargetBranch)
	}

	if o.SourceBranch != "" {
		values.Set("source_branch", o.SourceBranch)
	}

	if o.OrderBy != "" {
		values.Set("order_by", o.OrderBy)
	}

	if o.Sort != "" {
		values.Set("sort", o.Sort)
	}

	addPaging(values, o.Page, o.PerPage)

	return values
}

// CreateMergeRequestRequest is the request body for creating a merge request.
type CreateMergeRequestRequest struct {
	SourceBranch       string `json:"source_branch"                  yaml:"source_branch"`
	TargetBranch       string `json:"target_branch"                  yaml:"target_branch"`
	Title              string `json:"title"                          yaml:"title"`
	Description        string `json:"description,omitempty"          yaml:"description,omitempty"`
	RemoveSourceBranch bool   `json:"remove_source_branch,omitempty" yaml:"remove_source_branch,omitempty"`
}

// CreateBranchRequest is the request body for creating a branch.
type CreateBranchRequest struct {
	Branch string `json:"branch" yaml:"branch"`
	Ref    string `json:"ref"    yaml:"ref"`
}

func addPaging(values url.Values, page, perPage int) {
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}

	if perPage > 0 {
		values.Set("per_page", strconv.Itoa(perPage))
	}
}
