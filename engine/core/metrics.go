package core

const AvgCount uint8 = 30

// Metrics keeps a rolling average of frame times and a frames-per-second count.
type Metrics struct {
	frameAvgCounter    uint8
	msTimes            [AvgCount]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.msTimes[m.frameAvgCounter] = frameMS
	if m.frameAvgCounter == AvgCount-1 {
		m.msAvg = 0
		for i := uint8(0); i < AvgCount; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= float64(AvgCount)
	}
	m.frameAvgCounter++
	m.frameAvgCounter %= AvgCount

	// Calculate Frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all Frames.
	m.frames++
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}
