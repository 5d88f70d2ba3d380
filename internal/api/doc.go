// Package api handles incoming HTTP requests for the CasaFind API: request
// decoding and validation, translation of service errors to HTTP statuses,
// and JSON response formatting. Handlers stay thin and delegate business
// rules to package service.
package api
