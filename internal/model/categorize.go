package model

import "encoding/json"

// CategorizeRequest тело POST /categorize.
type CategorizeRequest struct {
	LinkID string  `json:"linkId" validate:"required"`
	Title  *string `json:"title"`
	Domain *string `json:"domain"`
	URL    string  `json:"url"`
}

// Suggestion ответ модели: имя категории и признак, что её нужно создать.
type Suggestion struct {
	Bucket string `json:"bucket"`
	IsNew  bool   `json:"isNew"`
}

// CategorizeResult итог одного запуска автокатегоризации.
// При Success == false заполнено только Error.
type CategorizeResult struct {
	Success    bool    `json:"success"`
	BucketID   *string `json:"bucketId"`
	BucketName *string `json:"bucketName"`
	IsNew      bool    `json:"isNew"`
	Error      string  `json:"error,omitempty"`
}

// MarshalJSON для неудачного результата отдаёт только {success, error}.
func (r CategorizeResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{Error: r.Error})
	}
	type plain CategorizeResult
	return json.Marshal(plain(r))
}
