// Package verify checks the divider against plain integer division and
// compares its interchangeable parts.
//
//   - Reference is Go's truncating division, the ground truth.
//   - Sweep divides every input of a width (exhaustive) or a seeded random
//     sample of inputs on each datapath and reports every disagreement.
//   - CompareRules counts the inputs where the carry-based quotient rule
//     departs from the sign-based one.
//   - CompareDatapaths checks one raw add on both datapaths.
//
// Sweeps fan out over an errgroup bounded by Config.Workers. Each division
// owns its registers, so workers share only the report.
package verify
