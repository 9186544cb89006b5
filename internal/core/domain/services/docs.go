// Package services contains stateless domain services that operate across
// aggregates. RoutePlanner sequences a driver's accepted jobs into a
// presentable multi-stop route without attempting route optimization.
package services
