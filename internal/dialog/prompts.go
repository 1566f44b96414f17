package dialog

// Prompt texts and per-state quick-reply vocabularies. These strings are the
// dialog's entire user-facing surface; input matching is against the same
// literals.

const (
	introText      = "売却査定をはじめます。約3分・全16問前後です。途中保存されます。"
	promptTypeText = "まず、売却する物件の【種類】を教えてください。"

	promptPrefText   = "物件の【都道府県】を教えてください。（例：東京都）"
	promptCityText   = "続いて【市区町村】を教えてください。（例：杉並区 / 横浜市鶴見区）"
	promptStreetText = "【町名・番地】をご入力ください。（例：阿佐谷南1-23-4）"

	promptAptNameText = "【建物名】を教えてください。（例：〇〇マンション）"
	promptRoomNoText  = "【部屋番号】を入力してください。（例：305／305号室）"
	retryRoomNoText   = "部屋番号の形式でお願いします。（例：305／305号室）"

	promptAreaText          = "【面積】を半角数字で（㎡、例：65.34）"
	promptAreaExclusiveText = "【専有面積】を半角数字で（㎡、例：65.34）"
	promptAreaLandText      = "まず【土地面積】を半角数字で（例：80.12）"
	promptAreaBuildingText  = "つづいて【建物面積】を半角数字で（例：95.60）"
	retryAreaText           = "うまく受け取れませんでした。例：65.34（㎡）"
	retryAreaLandText       = "例：80.12（㎡）でお願いします。"
	retryAreaBuildingText   = "例：95.60（㎡）でお願いします。"

	promptLayoutText    = "【間取り】を選んでください。"
	promptYearBuiltText = "（戸建て）【築年】または【築年数】（例：2003 / 築22年）"
	retryYearBuiltText  = "例：2003 / 築22年 の形式でお願いします。"
	promptStatusText    = "現在の【ご状況】を教えてください。"

	breakText    = "ここまで物件について伺いました。次はお客様についてお聞かせください。"
	continueWord = "続ける"

	promptOwnerText   = "物件の【所有者】について教えてください。"
	promptReasonText  = "【ご売却の理由】を教えてください。"
	promptMethodText  = "ご希望の【査定方法】をお選びください。"
	promptTimingText  = "【売却時期】の目安があればお知らせください。"
	promptContactText = "ご連絡はどの方法がよろしいですか？"
	promptNameText    = "【お名前（フルネーム）】をご入力ください。"
	promptPhoneText   = "【電話番号】（例：09012345678）"
	retryPhoneText    = "電話番号はハイフン無しで10-11桁でお願いします。（例：09012345678）"
	promptEmailText   = "【メールアドレス】（例：example@domain.jp）"
	retryEmailText    = "メール形式でお願いします。（例：example@domain.jp）"
	promptNotesText   = "【備考】があればご記入ください。なければ「なし」でOKです。"
	skipNotesWord     = "なし"
	agreeWord         = "同意する"

	followGreetingText = "友だち追加ありがとうございます！営業電話はしません。"
	followOfferText    = "よろしければ売却査定をはじめますか？"
	submittedText      = "査定依頼を受け付けました。担当よりご連絡します。"
	againOfferText     = "別の物件も査定しますか？"
	editMenuText       = "修正したい項目をお選びください。"
	thanksText         = "こちらこそ、ありがとうございます！"
)

var (
	typeLabels      = []string{"マンション", "戸建て", "土地", "その他"}
	layoutLabels    = []string{"1R", "1K", "1DK", "1LDK", "2LDK", "3LDK", "4LDK以上", "不明"}
	occupancyLabels = []string{"居住中", "空室", "賃貸中", "更地", "建築中"}
	ownerLabels     = []string{"本人所有", "親族所有", "法人名義", "相続予定", "代理人", "第三者"}
	reasonLabels    = []string{"住み替え(決定済み)", "住み替え(検討中)", "相続整理", "資産整理", "転勤/転居", "離婚等", "空き家対策 賃貸→売却", "その他"}
	methodLabels    = []string{"机上査定", "オンライン面談", "訪問査定"}
	timingLabels    = []string{"できるだけ早く", "3か月以内", "半年以内", "1年以内", "未定"}
	contactLabels   = []string{"LINEのみ", "電話", "メール"}
)

// Restart keywords reset the dialog from any state, before any other rule.
var restartKeywords = map[string]bool{
	"売却査定":   true,
	"査定":     true,
	"新規査定":   true,
	"やり直し":   true,
	"もう一度査定": true,
}

// Acknowledgement phrases get a polite reply instead of the silent no-op.
var ackPhrases = map[string]bool{
	"ありがとう":      true,
	"ありがとうございます": true,
	"感謝":         true,
	"サンキュー":      true,
}

func contains(labels []string, s string) bool {
	for _, l := range labels {
		if l == s {
			return true
		}
	}
	return false
}
