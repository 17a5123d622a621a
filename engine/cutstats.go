package engine

import "log"

// SearchStats collects node and cutoff counts for one search.
type SearchStats struct {
	Nodes            uint64
	QNodes           uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	MatesFound       uint64
}

// TotalNodes is the number of negamax and quiescence nodes visited.
func (s SearchStats) TotalNodes() uint64 {
	return s.Nodes + s.QNodes
}

func (s SearchStats) dump(logger *log.Logger) {
	logger.Println("info string Cut statistics:")
	logger.Printf("info string   Nodes: %d\n", s.Nodes)
	logger.Printf("info string   QNodes: %d\n", s.QNodes)
	logger.Printf("info string   Beta cutoffs: %d\n", s.BetaCutoffs)
	logger.Printf("info string   QStandPat cutoffs: %d\n", s.QStandPatCutoffs)
	logger.Printf("info string   QBeta cutoffs: %d\n", s.QBetaCutoffs)
	logger.Printf("info string   Terminal mates: %d\n", s.MatesFound)
}
