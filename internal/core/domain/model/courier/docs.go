// Package courier provides the Courier aggregate: identity, contract window
// and commission terms for the people who move guides.
package courier
