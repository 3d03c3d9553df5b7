// Package stats aggregates repository language byte counts and ranks them.
//
// # Pipeline
//
// A refresh runs in two steps:
//
//  1. [Aggregator.Aggregate] lists the account's repositories and fetches
//     every repository's language breakdown concurrently. Each fetch builds
//     its own partial [Tally]; partials are merged in repository order once
//     all fetches succeed, so the result does not depend on scheduling.
//  2. [SelectTop] keeps the five largest languages, folds the rest into an
//     "Others" bucket, converts bytes into percentages, and assigns colors.
//
// [Service] ties both steps to the color registry and implements
// snapshot.Refresher.
//
// # Percentages
//
// Shares are expressed in hundredths of a percent. Ranked languages are
// rounded individually, and Others absorbs the rounding residue so a ranking
// with an Others bucket sums to exactly 100.00. Without Others the sum stays
// within 0.01 of 100.
package stats
