// Package flowcsv reads custom characterization-factor import files.
//
// An import file is a UTF-8, comma-separated CSV with a header row
// naming at least the columns in [RequiredColumns]. Each data row
// describes one elementary flow together with the characterization
// factor to apply to it. Extra columns are tolerated and ignored.
//
// The package offers two passes over the same file shape:
//
//   - [ParseFlows] turns every data row into a [FlowRecord]. It is a
//     pure transformation: no database, no side effects beyond reading
//     the file.
//   - [ResolveNodes] additionally resolves every row's (name, code)
//     pair to a node identifier through an injected [NodeFinder] and
//     returns [ResolvedPair] values. All rows of a file must target
//     the same database.
//
// Both passes stream the file once and stop at the first problem.
// Validation errors cite the offending line, counting the header as
// line 1, so the first data row is reported as line 2.
package flowcsv
