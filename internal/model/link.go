package model

import "time"

// Link сохранённая пользователем ссылка.
type Link struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	URL       string    `json:"url"`
	Title     *string   `json:"title"`
	ImageURL  *string   `json:"imageUrl"`
	Domain    *string   `json:"domain"`
	BucketID  *string   `json:"bucketId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLink описывает входные данные для создания ссылки.
type NewLink struct {
	URL      string
	Title    *string
	ImageURL *string
	Domain   *string
}

// PageMetadata данные страницы, которыми дополняется ссылка в фоне.
type PageMetadata struct {
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CreateLinkRequest тело POST /links и POST /save.
type CreateLinkRequest struct {
	URL      string  `json:"url" validate:"required"`
	Title    *string `json:"title"`
	ImageURL *string `json:"imageUrl"`
	Domain   *string `json:"domain"`
}

// UpdateLinkRequest тело PUT /links/{id}.
type UpdateLinkRequest struct {
	BucketID *string `json:"bucketId"`
}

// LinkResponse ответ с одной ссылкой.
type LinkResponse struct {
	Link *Link `json:"link"`
}

// SaveLinkResponse ответ POST /save.
type SaveLinkResponse struct {
	Success bool  `json:"success"`
	Link    *Link `json:"link"`
}

// LinksResponse ответ GET /links.
type LinksResponse struct {
	Links []*Link `json:"links"`
}

// StringPtr возвращает nil для пустой строки.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue разыменовывает указатель, nil превращается в "".
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
