// Package provider defines the contract between the translation engine and
// completion backends. The single production adapter lives in the promptapi
// subpackage; tests substitute fakes.
package provider
