// Package terrain generates the deterministic landscape both frontends use as
// the large content tracked by the minimap.
package terrain

import (
	"encoding/binary"
	"hash/fnv"
	"image/color"
	"math"
	"sort"
)

const (
	FlagWater uint8 = 1 << iota
	FlagRiver
	FlagLake
	FlagCoast
)

type Biome uint8

const (
	BiomeUnknown Biome = iota
	BiomeForest
	BiomeGrassland
	BiomeJungle
	BiomeWetland
	BiomeSwamp
	BiomeDesert
	BiomeMountain
	BiomeTundra
	BiomeBoreal
)

const (
	MinSide = 8
	MaxSide = 1024
)

type Cell struct {
	Elevation   int8
	Moisture    uint8
	Temperature uint8
	Biome       Biome
	Flags       uint8
}

type Map struct {
	Width  int
	Height int
	Cells  []Cell
}

func (m Map) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return Cell{}, false
	}
	return m.Cells[y*m.Width+x], true
}

// Generate builds a width x height map. Sides are clamped into
// [MinSide, MaxSide]; the same seed always yields the same map.
func Generate(seed int64, width, height int) Map {
	width = clampInt(width, MinSide, MaxSide)
	height = clampInt(height, MinSide, MaxSide)
	cells := make([]Cell, width*height)

	for y := 0; y < height; y++ {
		lat := float64(y) / float64(max(1, height-1))
		latTemp := 1.0 - math.Abs(lat-0.5)*0.7
		for x := 0; x < width; x++ {
			fx, fy := float64(x), float64(y)
			nElev := layeredNoise(seed, fx, fy, saltElevation)
			nRidge := layeredNoise(seed+11, fx, fy, saltRidge)
			nMoist := layeredNoise(seed+31, fx, fy, saltMoisture)
			nTemp := layeredNoise(seed+47, fx, fy, saltTemperature)

			elevVal := (nElev-0.5)*120.0 + (math.Abs(nRidge-0.5)-0.25)*34.0 - 8
			elevation := int8(clampInt(int(math.Round(elevVal)), -90, 90))
			tempVal := clampFloat(latTemp+(nTemp-0.5)*0.35-float64(elevation)/220.0, 0, 1)
			moistVal := clampFloat(nMoist-float64(elevation)/280.0, 0, 1)
			temp := uint8(math.Round(tempVal * 255))
			moist := uint8(math.Round(moistVal * 255))

			var flags uint8
			if elevation <= -22 {
				flags |= FlagWater
			}
			cells[y*width+x] = Cell{
				Elevation:   elevation,
				Moisture:    moist,
				Temperature: temp,
				Biome:       classify(elevation, moist, temp),
				Flags:       flags,
			}
		}
	}

	m := Map{Width: width, Height: height, Cells: cells}
	m.carveRivers()
	m.markCoasts()
	return m
}

func classify(elev int8, moisture, temp uint8) Biome {
	e, m, t := int(elev), int(moisture), int(temp)
	switch {
	case e >= 64:
		return BiomeMountain
	case t <= 62:
		if m >= 140 {
			return BiomeBoreal
		}
		return BiomeTundra
	case m >= 205 && t >= 160:
		return BiomeJungle
	case m >= 185:
		return BiomeWetland
	case m >= 168 && t >= 140:
		return BiomeSwamp
	case m <= 70 && t >= 150:
		return BiomeDesert
	case m <= 95:
		return BiomeGrassland
	default:
		return BiomeForest
	}
}

var neighbours = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// carveRivers routes every land cell to its lowest neighbour and turns cells
// with enough upstream area into river; damp basins become lakes.
func (m *Map) carveRivers() {
	cells := m.Cells
	flowTo := make([]int, len(cells))
	accum := make([]int, len(cells))
	for i := range flowTo {
		flowTo[i] = -1
		accum[i] = 1
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := y*m.Width + x
			if cells[idx].Flags&FlagWater != 0 {
				continue
			}
			best := -1
			bestElev := int(cells[idx].Elevation)
			for _, off := range neighbours {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height {
					continue
				}
				n := ny*m.Width + nx
				if int(cells[n].Elevation) < bestElev {
					bestElev = int(cells[n].Elevation)
					best = n
				}
			}
			flowTo[idx] = best
		}
	}
	order := make([]int, len(cells))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cells[order[i]].Elevation > cells[order[j]].Elevation
	})
	for _, idx := range order {
		if next := flowTo[idx]; next >= 0 {
			accum[next] += accum[idx]
		}
	}
	threshold := max(16, len(cells)/180)
	for idx := range cells {
		c := &cells[idx]
		if c.Flags&FlagWater != 0 {
			continue
		}
		if accum[idx] >= threshold {
			c.Flags |= FlagRiver | FlagWater
			continue
		}
		if int(c.Elevation) <= -10 && c.Moisture >= 180 {
			c.Flags |= FlagLake | FlagWater
		}
	}
}

func (m *Map) markCoasts() {
	cells := m.Cells
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := &cells[y*m.Width+x]
			if c.Flags&FlagWater != 0 {
				continue
			}
			for _, off := range neighbours[:4] {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height {
					continue
				}
				if cells[ny*m.Width+nx].Flags&FlagWater != 0 {
					c.Flags |= FlagCoast
					break
				}
			}
			if c.Flags&FlagCoast != 0 && (c.Biome == BiomeGrassland || c.Biome == BiomeDesert) {
				c.Biome = BiomeForest
			}
		}
	}
}

// Color is the display colour of a cell, shaded by elevation.
func Color(c Cell) color.RGBA {
	switch {
	case c.Flags&FlagRiver != 0:
		return color.RGBA{R: 95, G: 141, B: 185, A: 255}
	case c.Flags&FlagLake != 0:
		return color.RGBA{R: 88, G: 133, B: 176, A: 255}
	case c.Flags&FlagWater != 0:
		return color.RGBA{R: 76, G: 116, B: 156, A: 255}
	}
	clr := shade(biomeColor(c.Biome), c.Elevation)
	if c.Flags&FlagCoast != 0 {
		clr.R = uint8(min(255, int(clr.R)+18))
		clr.G = uint8(min(255, int(clr.G)+18))
		clr.B = uint8(min(255, int(clr.B)+10))
	}
	return clr
}

func biomeColor(b Biome) color.RGBA {
	switch b {
	case BiomeForest:
		return color.RGBA{R: 71, G: 106, B: 88, A: 255}
	case BiomeGrassland:
		return color.RGBA{R: 116, G: 136, B: 87, A: 255}
	case BiomeJungle:
		return color.RGBA{R: 56, G: 98, B: 80, A: 255}
	case BiomeWetland:
		return color.RGBA{R: 76, G: 104, B: 102, A: 255}
	case BiomeSwamp:
		return color.RGBA{R: 69, G: 92, B: 82, A: 255}
	case BiomeDesert:
		return color.RGBA{R: 154, G: 136, B: 92, A: 255}
	case BiomeMountain:
		return color.RGBA{R: 130, G: 133, B: 145, A: 255}
	case BiomeTundra:
		return color.RGBA{R: 151, G: 163, B: 174, A: 255}
	case BiomeBoreal:
		return color.RGBA{R: 74, G: 110, B: 97, A: 255}
	default:
		return color.RGBA{R: 96, G: 105, B: 110, A: 255}
	}
}

func shade(clr color.RGBA, elevation int8) color.RGBA {
	f := clampFloat(1.0+float64(elevation)/230.0, 0.55, 1.3)
	return color.RGBA{
		R: uint8(clampInt(int(float64(clr.R)*f), 0, 255)),
		G: uint8(clampInt(int(float64(clr.G)*f), 0, 255)),
		B: uint8(clampInt(int(float64(clr.B)*f), 0, 255)),
		A: clr.A,
	}
}

const (
	saltElevation uint64 = iota + 1
	saltRidge
	saltMoisture
	saltTemperature
)

func hashUnit(seed int64, x, y int, salt uint64) float64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(y)))
	binary.LittleEndian.PutUint64(buf[24:], salt)
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return float64(h.Sum64()&0xfffffff) / float64(0xfffffff)
}

func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func valueNoise(seed int64, x, y, cellSize float64, salt uint64) float64 {
	gx := x / cellSize
	gy := y / cellSize
	x0 := int(math.Floor(gx))
	y0 := int(math.Floor(gy))
	tx := smoothstep(gx - float64(x0))
	ty := smoothstep(gy - float64(y0))
	n00 := hashUnit(seed, x0, y0, salt)
	n10 := hashUnit(seed, x0+1, y0, salt)
	n01 := hashUnit(seed, x0, y0+1, salt)
	n11 := hashUnit(seed, x0+1, y0+1, salt)
	nx0 := n00 + (n10-n00)*tx
	nx1 := n01 + (n11-n01)*tx
	return nx0 + (nx1-nx0)*ty
}

var octaves = [...]float64{52, 26, 13, 6}

func layeredNoise(seed int64, x, y float64, salt uint64) float64 {
	amplitude := 1.0
	total, weight := 0.0, 0.0
	for i, scale := range octaves {
		total += valueNoise(seed, x, y, scale, salt<<8|uint64(i)) * amplitude
		weight += amplitude
		amplitude *= 0.5
	}
	return total / weight
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
