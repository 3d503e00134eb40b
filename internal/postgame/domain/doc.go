// Package domain holds the post-game sequence: the five-step workflow run
// after each recorded battle (trauma, promotions, reinforcements,
// exploration, quartermaster), its per-step result logs, and the dice
// tables the steps roll on.
package domain
