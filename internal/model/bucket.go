package model

import "time"

// BucketNameMaxLen ограничение длины имени, совпадает с varchar(100) в схеме.
const BucketNameMaxLen = 100

// Bucket пользовательская категория ссылок. Пара (UserID, Name) уникальна.
type Bucket struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// BucketRequest тело POST /buckets и PUT /buckets/{id}.
type BucketRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// BucketResponse ответ с одной категорией.
type BucketResponse struct {
	Bucket *Bucket `json:"bucket"`
}

// BucketsResponse ответ GET /buckets.
type BucketsResponse struct {
	Buckets []*Bucket `json:"buckets"`
}

// SuccessResponse ответ на удаление.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse тело любой ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}
