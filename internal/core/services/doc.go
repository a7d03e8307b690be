// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never talk to the network or disk directly; every
// collaborator is injected through a driven port.
package services
