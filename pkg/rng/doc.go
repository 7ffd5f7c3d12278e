// Package rng supplies the engine's seeded, reproducible source of IID
// standard normals. Generator is deliberately narrow (one method) so a
// future QMC/Sobol policy can implement it without touching callers.
package rng
