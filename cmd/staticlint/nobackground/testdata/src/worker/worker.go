package worker

import "context"

func Start() context.Context {
	return context.Background()
}
