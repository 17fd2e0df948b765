package model

// DefaultDescription 未提供简介时使用的占位文本
const DefaultDescription = "No description"

// Film 电影（聚合根）
type Film struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"uniqueIndex;not null"`
	ReleaseDate string      `json:"release_date" gorm:"not null"`
	Duration    int         `json:"duration"`
	Description string      `json:"description"`
	Rating      float64     `json:"rating" gorm:"index"`
	Producers   []*Producer `json:"-" gorm:"many2many:film_producers;"`
	Actors      []*Actor    `json:"-" gorm:"many2many:film_actors;"`
	Genres      []*Genre    `json:"-" gorm:"many2many:film_genres;"`
}

// Producer 制片人
type Producer struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"uniqueIndex;not null"`
	Films []*Film `json:"-" gorm:"many2many:film_producers;"`
}

// Actor 演员
type Actor struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"uniqueIndex;not null"`
	Films []*Film `json:"-" gorm:"many2many:film_actors;"`
}

// Genre 类型
type Genre struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"uniqueIndex;not null"`
	Films []*Film `json:"-" gorm:"many2many:film_genres;"`
}

// Related 与电影多对多关联的实体（制片人/演员/类型）
type Related interface {
	GetID() uint
	GetName() string
	SetName(name string)
	// LinkFilm 在实体一侧记录关联，重复的电影不会追加两次
	LinkFilm(f *Film)
	FilmList() []*Film
}

func (p *Producer) GetID() uint { return p.ID }
func (p *Producer) GetName() string { return p.Name }
func (p *Producer) SetName(name string) { p.Name = name }
func (p *Producer) LinkFilm(f *Film) { p.Films = appendFilm(p.Films, f) }
func (p *Producer) FilmList() []*Film { return p.Films }
func (a *Actor) GetID() uint { return a.ID }
func (a *Actor) GetName() string { return a.Name }
func (a *Actor) SetName(name string) { a.Name = name }
func (a *Actor) LinkFilm(f *Film) { a.Films = appendFilm(a.Films, f) }
func (a *Actor) FilmList() []*Film { return a.Films }
func (g *Genre) GetID() uint { return g.ID }
func (g *Genre) GetName() string { return g.Name }
func (g *Genre) SetName(name string) { g.Name = name }
func (g *Genre) LinkFilm(f *Film) { g.Films = appendFilm(g.Films, f) }
func (g *Genre) FilmList() []*Film { return g.Films }

func appendFilm(films []*Film, f *Film) []*Film {
	for _, existing := range films {
		if existing == f || (f.ID != 0 && existing.ID == f.ID) {
			return films
		}
	}
	return append(films, f)
}

// Kind 关联实体的种类
type Kind string

const (
	KindProducer Kind = "producer"
	KindActor    Kind = "actor"
	KindGenre    Kind = "genre"
)

// Kinds 所有关联种类，按保存顺序排列
var Kinds = []Kind{KindProducer, KindActor, KindGenre}

// binding 描述某一种类在电影上的集合以及如何构造新实体
type binding struct {
	label   string
	plural  string
	field   string
	newOne  func() Related
	members func(f *Film) []Related
	attach  func(f *Film, e Related)
}

var bindings = map[Kind]binding{
	KindProducer: {
		label:  "Producer",
		plural: "Producers",
		field:  "Producers",
		newOne: func() Related { return &Producer{} },
		members: func(f *Film) []Related {
			out := make([]Related, len(f.Producers))
			for i, p := range f.Producers {
				out[i] = p
			}
			return out
		},
		attach: func(f *Film, e Related) { f.Producers = append(f.Producers, e.(*Producer)) },
	},
	KindActor: {
		label:  "Actor",
		plural: "Actors",
		field:  "Actors",
		newOne: func() Related { return &Actor{} },
		members: func(f *Film) []Related {
			out := make([]Related, len(f.Actors))
			for i, a := range f.Actors {
				out[i] = a
			}
			return out
		},
		attach: func(f *Film, e Related) { f.Actors = append(f.Actors, e.(*Actor)) },
	},
	KindGenre: {
		label:  "Genre",
		plural: "Genres",
		field:  "Genres",
		newOne: func() Related { return &Genre{} },
		members: func(f *Film) []Related {
			out := make([]Related, len(f.Genres))
			for i, g := range f.Genres {
				out[i] = g
			}
			return out
		},
		attach: func(f *Film, e Related) { f.Genres = append(f.Genres, e.(*Genre)) },
	},
}

// Valid 判断种类是否已注册
func (k Kind) Valid() bool {
	_, ok := bindings[k]
	return ok
}

// Label 种类的展示名称，如 "Producer"
func (k Kind) Label() string { return bindings[k].label }

// Plural 复数展示名称，如 "Producers"
func (k Kind) Plural() string { return bindings[k].plural }

// Field 电影上对应的关联字段名（GORM 关联名）
func (k Kind) Field() string { return bindings[k].field }

// New 构造该种类的空实体
func (k Kind) New(name string) Related {
	e := bindings[k].newOne()
	e.SetName(name)
	return e
}

// Members 返回电影在该种类下的关联实体
func (f *Film) Members(kind Kind) []Related {
	return bindings[kind].members(f)
}

// Attach 把实体加入电影在该种类下的集合
func (f *Film) Attach(kind Kind, e Related) {
	bindings[kind].attach(f, e)
}

// Holds 电影是否已关联同名实体
func (f *Film) Holds(kind Kind, name string) bool {
	for _, e := range f.Members(kind) {
		if e.GetName() == name {
			return true
		}
	}
	return false
}
