package domain

// PostMessageCommand carries a user submission before validation.
type PostMessageCommand struct {
	Body string
}

// SyntheticMessageCommand carries a generated message for the board.
type SyntheticMessageCommand struct {
	Body   string
	Sender string
}
