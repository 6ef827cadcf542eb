// Package services contains the domain services of the assignment engine:
// zone resolution, candidate scoring and the offer cascade. They hold the
// business rules that span more than one aggregate and stay free of storage
// concerns; persistence happens behind the ports they receive.
package services
