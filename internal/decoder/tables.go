package decoder

import "strings"

var ranks = strings.Split("新人,9級,8級,7級,6級,5級,4級,3級,2級,1級,初段,二段,三段,四段,五段,六段,七段,八段,九段,十段", ",")

var roundNames = strings.Split("東1,東2,東3,東4,南1,南2,南3,南4,西1,西2,西3,西4,北1,北2,北3,北4", ",")

// Indexed by the yaku ids of the log format; some names repeat.
var yakuNames = strings.Fields(`
	tsumo           riichi          ippatsu         chankan
	rinshan         haitei          houtei          pinfu
	tanyao          ippeiko         fanpai0         fanpai1
	fanpai2         fanpai3         fanpai4         fanpai5
	fanpai6         fanpai7         yakuhai0        yakuhai1
	yakuhai2        daburi          chiitoi         chanta
	itsuu           sanshokudoujin  sanshokudou     sankantsu
	toitoi          sanankou        shousangen      honrouto
	ryanpeikou      junchan         honitsu         chinitsu
	renhou          tenhou          chihou          daisangen
	suuankou        suuankou        tsuiisou        ryuuiisou
	chinrouto       chuurenpooto    chuurenpooto    kokushi
	kokushi         daisuushi       shousuushi      suukantsu
	dora            uradora         akadora
`)

var limitNames = []string{"", "mangan", "haneman", "baiman", "sanbaiman", "yakuman"}

var nameKeys = []string{"n0", "n1", "n2", "n3"}

var handKeys = []string{"hai0", "hai1", "hai2", "hai3"}

const (
	discardLetters = "DEFG"
	drawLetters    = "TUVW"
)
