package bot

// Reply texts live here so the handlers stay readable.

var unknownPhrases = []string{"知らない", "わからない", "コマンド合ってる？"}

var unknownSuffixes = []string{"…", "！", ""}

// aaList holds the throw arts used by the reaction command. The "Z"
// placeholder is replaced with the thrown emoji.
var aaList = []string{
	"(ノ・∀・)ノ ⌒ Z",
	"(ノ^o^)ノ ⌒ Z",
	"┗(^o^　)┓三 Z",
	"(っ'ω')っ ⌒ Z",
	"⊂(・▽・)⊃ ⌒ Z",
}

var reactionEmojis = []string{
	"⭐", "🌟", "✨", "💫", "🌠", "🎉", "💖", "🍀", "🎀", "🌸",
}

const helpIntro = "やぶみちゃんです！\n現在は出来ることは以下の通りです！\n"

const helpBody = "(unixtime) : 現在のUnixTimeを表示します！\n" +
	"(blocktime) : 現在のブロックタイムを表示します！\n" +
	"(count|カウント) : カウントを呼び出した回数を表示します！\n" +
	"(loginbonus|ログインボーナス|ログボ|ろぐぼ) : ログインボーナスです！\n" +
	"(ping) : pong!と返信します！\n" +
	"(fav|ふぁぼ|ファボ|祝福|星) : リアクションを送信します！\n" +
	"(remind) <希望時間> : 希望時間にリプライを送信します！\n" +
	"    例) remind 2023/12/23 06:00:00\n" +
	"        remind 06:00:00\n" +
	"        remind 2023/12/23 06:00:00 !!!おきて\n" +
	"  (remind) list : あなたが登録したリマインダ一覧を表示します！\n" +
	"  (remind) del <イベントID(hex|note)> : 指定されたノート宛てにあなたが登録したリマインダを削除します！\n" +
	"(dice) [ダイスの数と面の数] : さいころを振ります！\n" +
	"(fiatconv) (sat|jpy|usd) <金額> : 通貨変換をします！(Powered by CoinGecko)\n" +
	"(location) <場所> : 指定された場所を探します！\n" +
	"<場所>はどこ : 上のエイリアスです！\n" +
	"(weather) forecast <場所> : 指定された場所の天気をお知らせします！(気象庁情報)\n" +
	"<場所>の天気 : 上のエイリアスです！\n" +
	"(weather) map : 現在の天気図を表示します！(気象庁情報)\n" +
	"天気図 : 上のエイリアスです！\n" +
	"(weather) himawari : 現在の気象衛星ひまわりの画像を表示します！(気象庁情報)\n" +
	"ひまわり : 上のエイリアスです！\n" +
	"(weather) radar <場所>: 指定された場所の現在の雨雲の画像を表示します！(気象庁情報)\n" +
	"(calc) <式> : 入力された式を計算します！\n" +
	"(passport|許可証|パス) : 国外からでもアクセス出来るように許可証を発行します！\n" +
	"(search) <キーワード> : 入力されたキーワードをリレーから検索します！\n" +
	"(push) (note|dm|channel|zap) (enable|disable|true|false|on|off|1|0): やぶみ通知の設定を変更します！\n" +
	"(info|情報) : あなたの統計情報をやぶみリレーから確認します！\n" +
	"(status|ステータス) : やぶみリレーの統計情報を表示します！\n" +
	"(help|ヘルプ|へるぷ) : このメッセージを表示します！\n"
