// Package domain holds the campaign aggregate: the multi-battle arc
// tracked against a warband, its recorded games, and the fixed
// progression table that drives resource caps.
package domain
