// Package portalgrid turns a 2D cost grid into a small navigation graph:
// the passable cells are covered by maximal rectangles ("portals") and two
// portals are linked when their borders touch.
//
// 🚀 What is portalgrid?
//
//	A deterministic, single-pass pipeline that brings together:
//		• grid/   — validated row-major cost grids, seeded random generation
//		• portal/ — greedy rectangle decomposition, ownership index,
//		            border scanning into a symmetric adjacency graph
//		• route/  — BFS (fewest hops) and Dijkstra (centroid distance)
//		            over the portal graph
//		• render/ — passable masks and scaled graph debug images (PNG, TGA)
//
// ✨ Why portals?
//
//   - A 100×100 grid of ~8000 open cells collapses to a few hundred nodes
//   - Every passable cell belongs to exactly one rectangle
//   - Links are symmetric and only follow shared borders, never corners
//
// Quick ASCII example (threshold 0.8, '#' blocked):
//
//	. . .        0 0 0
//	. # .   →    1 # 2      0─1, 0─2, 1─3, 2─3
//	. . .        1 3 2
//
// The cmd/portalgrid binary wires the packages together with YAML config,
// structured logging, Prometheus metrics and OpenTelemetry spans:
//
//	go run ./cmd/portalgrid solve --width 100 --height 100 --seed 1029382
package portalgrid
