package store

import (
	"aptos-board/domain"
	"time"
)

// DemoStats are the counters the board starts with when demo content is on.
var DemoStats = domain.Stats{TotalMessages: 1247, UniqueUsers: 342, ActiveNow: 23}

// DemoSeed returns the welcome messages shown on a fresh board.
func DemoSeed(now time.Time) []domain.Message {
	return []domain.Message{
		domain.NewMessage("1",
			"Welcome to the Aptos Message Board! This is the future of decentralized communication.",
			"0x1234...5678", now.Add(-time.Hour), domain.OriginSeed),
		domain.NewMessage("2",
			"Just posted my first message on Aptos! The transaction was lightning fast ⚡",
			"0x9876...5432", now.Add(-30*time.Minute), domain.OriginSeed),
		domain.NewMessage("3",
			"Building the future of Web3 communication, one message at a time 🚀",
			"0xabcd...efgh", now.Add(-15*time.Minute), domain.OriginSeed),
	}
}
