// Package dirsdk is a typed Go client for the Carometro directory service.
// The request and response types double as the service's wire contract: the
// HTTP handlers encode and decode exactly these structs.
package dirsdk
