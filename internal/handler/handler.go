// Package handler contains the HTTP endpoint handlers.
//
// Concrete handlers (PokemonHandler, TypeHandler, HealthHandler, ...)
// embed the base Handler for access to shared server resources, and
// register their endpoints through the generic Handle/HandleNoContent
// pipeline which centralizes binding, validation, logging and tracing.
package handler
