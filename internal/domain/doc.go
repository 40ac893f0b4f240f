// Package domain defines the core business entities of the application:
// lessons, the questions that belong to them, and the transient quiz
// session that walks a lesson's questions and tallies the score.
package domain
