package context

type Key string

const (
	Identity Key = "identity"
	Claims   Key = "claims"
	Params   Key = "params"
)
