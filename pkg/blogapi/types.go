package blogapi

import "time"

// Resource contains fields shared by every entity the API returns.
type Resource struct {
	ID        string    `json:"id"        yaml:"id"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Envelope is the wrapper the server puts around successful responses.
// Callers consume only Data; the pipeline and resource clients unwrap it.
type Envelope[T any] struct {
	Message    string `json:"message"    yaml:"message"`
	StatusCode int    `json:"statusCode" yaml:"statusCode"`
	Data       T      `json:"data"       yaml:"data"`
}

// Category represents a blog category.
type Category struct {
	Resource

	Name      string `json:"name"      yaml:"name"`
	Slug      string `json:"slug"      yaml:"slug"`
	Published bool   `json:"published" yaml:"published"`
}

// Post represents a blog post. Category is embedded by the server on reads.
type Post struct {
	Resource

	Title       string   `json:"title"               yaml:"title"`
	Slug        string   `json:"slug"                yaml:"slug"`
	Content     string   `json:"content"             yaml:"content"`
	Description string   `json:"description"         yaml:"description"`
	Thumbnail   string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Published   bool     `json:"published"           yaml:"published"`
	CategoryID  string   `json:"categoryId"          yaml:"categoryId"`
	Category    Category `json:"category"            yaml:"category"`
}

// Image represents an entry in the image library.
type Image struct {
	Resource

	Filename string `json:"filename" yaml:"filename"`
	URL      string `json:"url"      yaml:"url"`
}

// PostCreateRequest represents a request to create a post. Slug is derived
// from the title once at creation time and is immutable afterwards.
type PostCreateRequest struct {
	Title       string `json:"title"               yaml:"title"               validate:"required,max=200"`
	Slug        string `json:"slug"                yaml:"slug"                validate:"required,max=200"`
	Content     string `json:"content"             yaml:"content"             validate:"required"`
	Description string `json:"description"         yaml:"description"         validate:"required,max=500"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" validate:"omitempty,url"`
	CategoryID  string `json:"categoryId"          yaml:"categoryId"          validate:"required"`
	Published   bool   `json:"published"           yaml:"published"`
}

// PostUpdateRequest represents a request to update a post. It is a strict
// subset of PostCreateRequest: the category reference cannot be changed.
type PostUpdateRequest struct {
	Title       string `json:"title"               yaml:"title"               validate:"required,max=200"`
	Slug        string `json:"slug"                yaml:"slug"                validate:"required,max=200"`
	Content     string `json:"content"             yaml:"content"             validate:"required"`
	Description string `json:"description"         yaml:"description"         validate:"required,max=500"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" validate:"omitempty,url"`
	Published   bool   `json:"published"           yaml:"published"`
}

// CategoryCreateRequest represents a request to create a category.
type CategoryCreateRequest struct {
	Name      string `json:"name"      yaml:"name"      validate:"required,max=100"`
	Slug      string `json:"slug"      yaml:"slug"      validate:"required,max=100"`
	Published bool   `json:"published" yaml:"published"`
}

// CategoryUpdateRequest represents a request to update a category. Name is
// immutable after creation; the server rejects attempts to change it.
type CategoryUpdateRequest struct {
	Slug      string `json:"slug"      yaml:"slug"      validate:"required,max=100"`
	Published bool   `json:"published" yaml:"published"`
}

// PublishRequest toggles only the published flag. Modeled as its own payload
// so callers cannot accidentally overwrite unrelated fields.
type PublishRequest struct {
	Published bool `json:"published" yaml:"published"`
}

// UploadFile is one binary file handed to the upload operation.
type UploadFile struct {
	Name    string
	Content []byte
}

// FileMeta is the per-file metadata the upload operation returns.
type FileMeta struct {
	Filename string `json:"filename" yaml:"filename"`
	URL      string `json:"url"      yaml:"url"`
}

// ProgressFunc receives upload progress as a 0-100 integer percentage. It is
// only invoked when the total upload size is known.
type ProgressFunc func(percent int)

// PostList is the enveloped response of the post list endpoint.
type PostList = Envelope[[]Post]

// PostDetail is the enveloped response of the post detail endpoint.
type PostDetail = Envelope[Post]
