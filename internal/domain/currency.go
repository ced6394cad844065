package domain

// 1 BTC = 10^8 sat.
const satPerBtc = 100000000

func Btc2Sat(btc float64) float64 { return btc * satPerBtc }

func Sat2Btc(sat float64) float64 { return sat / satPerBtc }
