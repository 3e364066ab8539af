// Package matrixio reads and writes TSP instances: a cost matrix plus an
// optional name and city labels.
//
// Supported formats, chosen from the file extension by Detect:
//
//   - TOML (.toml): name = "...", labels = [...], matrix = [["INF", 10], [4, "-"]]
//   - JSON (.json): {"name": "...", "labels": [...], "matrix": [[null, 10], [4, "INF"]]}
//   - YAML (.yaml, .yml): name, labels and matrix keys; .inf is Forbidden too
//   - Text (anything else): one row per line, whitespace separated, "#" comments
//
// In every format the tokens "INF", "inf", "-" and null denote a forbidden
// edge. Diagonal cells are ignored and always read as forbidden.
package matrixio
