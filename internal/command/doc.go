// Package command implements the line-oriented command language.
//
// A line is split on whitespace; the first token names the command and the
// remaining tokens are its positional arguments:
//
//	ADD_CHILD <mother> <child> <gender>
//	GET_RELATIONSHIP <person> <relationship>
//
// Parse turns a line into a Command, Run applies it to a domain.Family and
// captures the outcome in a Result, and Present renders the Result as the
// fixed output token or the space-joined names.
package command
