// Package domain holds the roster-member campaign projection: the fields
// of a warband member that the campaign engine reads and mutates (status,
// scars, advancements, promotion dice), plus the faction catalog entries
// that constrain reinforcement and equipment choices.
package domain
