package fallback

// message is the closed set of values exchanged with the embedding worker.
type message interface{ isMessage() }

// embedRequest asks the worker for the embedding of Text.
type embedRequest struct {
	ID   string
	Text string
}

// embedResult carries the vector for request ID.
type embedResult struct {
	ID     string
	Vector []float32
}

// embedError reports that request ID failed.
type embedError struct {
	ID      string
	Message string
}

// ready is sent once the backend has answered its warm-up request.
type ready struct{}

func (embedRequest) isMessage() {}
func (embedResult) isMessage()  {}
func (embedError) isMessage()   {}
func (ready) isMessage()        {}
