package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// minCandles is the shortest series the snapshot can be computed from.
// MA20 is the binding constraint; MACD and RSI degrade gracefully below
// their ideal warm-up lengths.
const minCandles = 20

// SMA returns the simple moving average of the last window values.
func SMA(values []float64, window int) float64 {
	if window <= 0 || len(values) < window {
		return 0
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// EMASeries computes an exponential moving average over the whole series,
// seeded with the first value.
func EMASeries(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	alpha := 2.0 / (float64(period) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACDSeries returns DIF, DEA and histogram series.
// DIF = EMA12 - EMA26, DEA = EMA9(DIF), histogram = (DIF - DEA) * 2.
func MACDSeries(closes []float64) (dif, dea, hist []float64) {
	if len(closes) == 0 {
		return nil, nil, nil
	}
	ema12 := EMASeries(closes, 12)
	ema26 := EMASeries(closes, 26)
	dif = make([]float64, len(closes))
	for i := range closes {
		dif[i] = ema12[i] - ema26[i]
	}
	dea = EMASeries(dif, 9)
	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = (dif[i] - dea[i]) * 2
	}
	return dif, dea, hist
}

// RSI computes the Wilder-smoothed relative strength index for the
// given period. Returns a neutral 50 when the series is too short.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// VolumeRatio returns today's volume over the mean of the previous
// five days. Returns 1 when the series is too short or flat.
func VolumeRatio(volumes []float64) float64 {
	if len(volumes) < 6 {
		return 1
	}
	var sum float64
	for _, v := range volumes[len(volumes)-6 : len(volumes)-1] {
		sum += v
	}
	avg := sum / 5
	if avg <= 0 {
		return 1
	}
	return volumes[len(volumes)-1] / avg
}

// Snapshot computes all indicator values over a candle series, oldest first.
func Snapshot(candles []models.Candle) (*models.TechnicalSnapshot, error) {
	if len(candles) < minCandles {
		return nil, fmt.Errorf("need at least %d candles, got %d", minCandles, len(candles))
	}

	closes := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	last := len(candles) - 1
	s := &models.TechnicalSnapshot{
		Close:     closes[last],
		PrevClose: closes[last-1],
		MA5:       SMA(closes, 5),
		MA10:      SMA(closes, 10),
		MA20:      SMA(closes, 20),
		RSI6:      RSI(closes, 6),
		RSI12:     RSI(closes, 12),
		RSI24:     RSI(closes, 24),
		Volume:    volumes[last],
	}

	if s.PrevClose > 0 {
		s.ChangePct = (s.Close - s.PrevClose) / s.PrevClose * 100
	}
	if s.MA5 > 0 {
		s.Bias5 = (s.Close - s.MA5) / s.MA5 * 100
	}
	if s.MA10 > 0 {
		s.Bias10 = (s.Close - s.MA10) / s.MA10 * 100
	}
	if s.MA20 > 0 {
		s.Bias20 = (s.Close - s.MA20) / s.MA20 * 100
	}

	dif, dea, hist := MACDSeries(closes)
	s.DIF = dif[last]
	s.DEA = dea[last]
	s.Histogram = hist[last]
	s.PrevDIF = dif[last-1]
	s.PrevDEA = dea[last-1]

	s.VolumeRatio = VolumeRatio(volumes)

	return s, nil
}
