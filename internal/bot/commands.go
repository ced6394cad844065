package bot

import "regexp"

var (
	rePing     = regexp.MustCompile(`(?i)\b(ping)\b`)
	reReaction = regexp.MustCompile(`(?i)(\bfav\b|ふぁぼ|ファボ|祝福|星)`)

	reDiceMulti  = regexp.MustCompile(`(?i)\b(dice)\s(\d+)d(\d+)\b`)
	reDiceSingle = regexp.MustCompile(`(?i)\b(dice)\b`)

	reCount      = regexp.MustCompile(`(?i)(\bcount\b|カウント)`)
	reLoginBonus = regexp.MustCompile(`(?i)(\bloginbonus\b|ログインボーナス|ログボ|ろぐぼ)`)

	reUnixtime  = regexp.MustCompile(`(?i)\b(unixtime)\b`)
	reBlocktime = regexp.MustCompile(`(?i)\b(blocktime)\b`)

	reLocation    = regexp.MustCompile(`(?i)\b(location)\s(.+)`)
	reLocationAlt = regexp.MustCompile(`(\S+)はどこ`)

	reWeather            = regexp.MustCompile(`(?i)\b(weather)\s(.+)`)
	reWeatherAltForecast = regexp.MustCompile(`(\S+)の天気`)
	reWeatherAltMap      = regexp.MustCompile(`(天気図)`)
	reWeatherAltHimawari = regexp.MustCompile(`(ひまわり)`)

	reSearch = regexp.MustCompile(`(?i)\b(search)\s(.*)`)

	reRemind = regexp.MustCompile(`(?i)\b(remind)\s(.+)`)

	reFiatConv = regexp.MustCompile(`(?i)\b(fiatconv)\s(.+)`)
	reSatConv  = regexp.MustCompile(`(?i)\b(satconv)\s(\d+)\b`)
	reJpyConv  = regexp.MustCompile(`(?i)\b(jpyconv)\s(\d+)\b`)
	reUsdConv  = regexp.MustCompile(`(?i)\b(usdconv)\s(\d+)\b`)

	reCalc = regexp.MustCompile(`(?is)(calc)\s(.*)`)

	rePassport = regexp.MustCompile(`(?i)(\bpassport\b|許可証|パス)`)

	reInfo   = regexp.MustCompile(`(?i)(\binfo\b|情報)`)
	reStatus = regexp.MustCompile(`(?i)(\bstatus\b|ステータス)`)

	rePush = regexp.MustCompile(`(?i)\b(push)\s(.+)`)

	reReboot = regexp.MustCompile(`(?i)(\breboot\b|再起動)`)
	reHelp   = regexp.MustCompile(`(?i)(\bhelp\b|ヘルプ|へるぷ)`)
)

// commandTable lists every command in dispatch order. Order matters:
// later matches overwrite the handled flag of earlier ones, and the two
// non-runsEvenIfHandled entries yield to anything that fired before them.
func (b *Bot) commandTable() []command {
	return []command{
		{rePing, true, b.cmdPing},
		{reDiceMulti, true, b.cmdDiceMulti},
		{reDiceSingle, false, b.cmdDiceSingle},
		{reReaction, true, b.cmdReaction},
		{reCount, true, b.cmdCount},
		{reLoginBonus, true, b.cmdLoginBonus},
		{reUnixtime, true, b.cmdUnixtime},
		{reBlocktime, true, b.cmdBlocktime},
		{reFiatConv, true, b.cmdFiatConv},
		{reSatConv, true, b.cmdSatConv},
		{reJpyConv, true, b.cmdJpyConv},
		{reUsdConv, true, b.cmdUsdConv},
		{reRemind, true, b.cmdRemind},
		{reLocation, true, b.cmdLocation},
		{reLocationAlt, true, b.cmdLocation},
		{reWeather, true, b.cmdWeather},
		{reWeatherAltForecast, true, b.cmdWeatherAltForecast},
		{reWeatherAltMap, true, b.cmdWeatherAltMap},
		{reWeatherAltHimawari, true, b.cmdWeatherAltHimawari},
		{reCalc, true, b.cmdCalc},
		{rePassport, true, b.cmdPassport},
		{reSearch, true, b.cmdSearch},
		{reInfo, true, b.cmdInfo},
		{reStatus, true, b.cmdStatus},
		{rePush, true, b.cmdPushSetting},
		{reReboot, true, b.cmdReboot},
		{reHelp, false, b.cmdHelp},
	}
}
