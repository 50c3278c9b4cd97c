package BEM2D

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/panelyze/utils"
)

// Assemble fills H and G in parallel over source rows. The diagonal blocks
// of H are replaced by minus the sum of the off-diagonal blocks of the row,
// so a rigid translation produces no traction response.
func (s *Solver) Assemble() (err error) {
	var (
		N      = len(s.Elements)
		H      = utils.NewMatrix(2*N, 2*N)
		G      = utils.NewMatrix(2*N, 2*N)
		pm     = utils.NewPartitionMap(s.Opts.Workers, N)
		eg     errgroup.Group
		logger = s.Opts.Logger
		start  = time.Now()
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		iMin, iMax := pm.GetBucketRange(np)
		eg.Go(func() error {
			for i := iMin; i < iMax; i++ {
				var diag Block
				for j := 0; j < N; j++ {
					Hb, Gb, err := s.ev.Block(i, j)
					if err != nil {
						return err
					}
					G.SetBlock2(i, j, Gb)
					if i != j {
						H.SetBlock2(i, j, Hb)
						diag = diag.Add(Hb, -1)
					}
				}
				H.SetBlock2(i, i, diag)
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return
	}
	s.H, s.G = H.SetReadOnly("H"), G.SetReadOnly("G")
	s.assembled = true
	logger.Info("Assembled influence matrices", "elements", N, "workers", pm.ParallelDegree,
		"elapsed", time.Since(start).String())
	logger.V(DEBUG).Info("Memory", "usage", utils.GetMemUsage())
	return
}
