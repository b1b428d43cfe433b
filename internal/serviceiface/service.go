package serviceiface

// Service is implemented by everything the app manager starts and stops.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
