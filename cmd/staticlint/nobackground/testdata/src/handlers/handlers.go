package handlers

import (
	"context"
	"net/http"
)

func use(ctx context.Context) {}

func Good(w http.ResponseWriter, r *http.Request) {
	use(r.Context())
}

func Bad(w http.ResponseWriter, r *http.Request) {
	use(context.Background()) // want `context.Background в обработчике`
	use(context.TODO())       // want `context.TODO в обработчике`
}
