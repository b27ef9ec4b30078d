package gridmap

// Downsample builds a coarser Grid by max-pooling factor x factor blocks of
// the source grid: the output cost at (x, y) is the maximum (worst) cost
// among the source cells it covers, so downsampling never hides an obstacle.
// A factor of 1 (or less) returns the source grid unchanged.
//
// This corresponds to the costmap downsampler the original planner
// references (_costmap_downsampler) but whose implementation lives outside
// the planner core; it is supplemented here because downsample_costmap /
// downsampling_factor are real, documented configuration knobs.
func Downsample(src *Grid, factor int) *Grid {
	if factor <= 1 {
		return src
	}

	sizeX := (src.SizeX + factor - 1) / factor
	sizeY := (src.SizeY + factor - 1) / factor
	costs := make([]CellCost, sizeX*sizeY)

	for oy := 0; oy < sizeY; oy++ {
		for ox := 0; ox < sizeX; ox++ {
			var worst CellCost
			sx0, sy0 := ox*factor, oy*factor
			for sy := sy0; sy < sy0+factor && sy < src.SizeY; sy++ {
				for sx := sx0; sx < sx0+factor && sx < src.SizeX; sx++ {
					if c := src.CostAtXY(sx, sy); c > worst {
						worst = c
					}
				}
			}
			costs[oy*sizeX+ox] = worst
		}
	}

	return &Grid{
		SizeX:      sizeX,
		SizeY:      sizeY,
		OriginX:    src.OriginX,
		OriginY:    src.OriginY,
		Resolution: src.Resolution * float64(factor),
		costs:      costs,
	}
}
