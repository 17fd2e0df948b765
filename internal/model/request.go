package model

// EntitySpec 关联实体的创建载荷，名称是同一种类内的去重键
type EntitySpec struct {
	Name string `json:"name" binding:"required,max=255"`
}

// FilmCreate 电影本体字段
type FilmCreate struct {
	Name        string   `json:"name" binding:"required,max=255"`
	ReleaseDate string   `json:"release_date" binding:"required,datetime=2006-01-02"`
	Duration    *int     `json:"duration" binding:"required,gte=0"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating" binding:"required,gte=0,lte=10"`
}

// FilmCreateRequest POST /films/ 请求体
type FilmCreateRequest struct {
	Film      *FilmCreate  `json:"film" binding:"required"`
	Producers []EntitySpec `json:"producers" binding:"required,dive"`
	Actors    []EntitySpec `json:"actors" binding:"required,dive"`
	Genres    []EntitySpec `json:"genres" binding:"required,dive"`
}

// Links 取出请求中的关联部分
func (r *FilmCreateRequest) Links() LinkRequest {
	return LinkRequest{Producers: r.Producers, Actors: r.Actors, Genres: r.Genres}
}

// LinkRequest 为电影追加关联实体
type LinkRequest struct {
	Producers []EntitySpec `json:"producers" binding:"dive"`
	Actors    []EntitySpec `json:"actors" binding:"dive"`
	Genres    []EntitySpec `json:"genres" binding:"dive"`
}

// Specs 返回某一种类的载荷列表
func (r LinkRequest) Specs(kind Kind) []EntitySpec {
	switch kind {
	case KindProducer:
		return r.Producers
	case KindActor:
		return r.Actors
	case KindGenre:
		return r.Genres
	}
	return nil
}

// ToFilm 构造待保存的电影
func (c *FilmCreate) ToFilm() *Film {
	film := &Film{
		Name:        c.Name,
		ReleaseDate: c.ReleaseDate,
		Description: DefaultDescription,
	}
	if c.Duration != nil {
		film.Duration = *c.Duration
	}
	if c.Description != nil {
		film.Description = *c.Description
	}
	if c.Rating != nil {
		film.Rating = *c.Rating
	}
	return film
}

// FilmUpdate PATCH 载荷，nil 字段表示未设置
type FilmUpdate struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=255"`
	ReleaseDate *string  `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	Duration    *int     `json:"duration" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=10"`
}

// Fields 只包含已设置的列
func (u *FilmUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.ReleaseDate != nil {
		fields["release_date"] = *u.ReleaseDate
	}
	if u.Duration != nil {
		fields["duration"] = *u.Duration
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Rating != nil {
		fields["rating"] = *u.Rating
	}
	return fields
}

// EntityUpdate 制片人/演员/类型的 PATCH 载荷
type EntityUpdate struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
}

// Fields 只包含已设置的列
func (u *EntityUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	return fields
}

// FilmPublic 电影的对外视图（不含关联）
type FilmPublic struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

// FilmPublicFull 电影及其全部关联
type FilmPublicFull struct {
	FilmPublic
	Producers []EntityPublic `json:"producers"`
	Actors    []EntityPublic `json:"actors"`
	Genres    []EntityPublic `json:"genres"`
}

// EntityPublic 关联实体的对外视图
type EntityPublic struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EntityPublicWithFilms 关联实体及其电影
type EntityPublicWithFilms struct {
	EntityPublic
	Films []FilmPublic `json:"films"`
}

// NewFilmPublic 转换为对外视图
func NewFilmPublic(f *Film) FilmPublic {
	return FilmPublic{
		ID:          f.ID,
		Name:        f.Name,
		ReleaseDate: f.ReleaseDate,
		Duration:    f.Duration,
		Description: f.Description,
		Rating:      f.Rating,
	}
}

// NewFilmPublicList 批量转换
func NewFilmPublicList(films []*Film) []FilmPublic {
	out := make([]FilmPublic, 0, len(films))
	for _, f := range films {
		out = append(out, NewFilmPublic(f))
	}
	return out
}

// NewFilmPublicFull 转换为带关联的对外视图
func NewFilmPublicFull(f *Film) FilmPublicFull {
	return FilmPublicFull{
		FilmPublic: NewFilmPublic(f),
		Producers:  NewEntityPublicList(f.Members(KindProducer)),
		Actors:     NewEntityPublicList(f.Members(KindActor)),
		Genres:     NewEntityPublicList(f.Members(KindGenre)),
	}
}

// NewEntityPublicList 批量转换关联实体
func NewEntityPublicList(items []Related) []EntityPublic {
	out := make([]EntityPublic, 0, len(items))
	for _, e := range items {
		out = append(out, EntityPublic{ID: e.GetID(), Name: e.GetName()})
	}
	return out
}

// NewEntityPublicWithFilms 转换为带电影列表的视图
func NewEntityPublicWithFilms(e Related) EntityPublicWithFilms {
	return EntityPublicWithFilms{
		EntityPublic: EntityPublic{ID: e.GetID(), Name: e.GetName()},
		Films:        NewFilmPublicList(e.FilmList()),
	}
}

// DeleteResult 删除成功的确认体
type DeleteResult struct {
	OK string `json:"ok"`
}

// Deleted 删除确认
func Deleted() DeleteResult {
	return DeleteResult{OK: "Successful deletion"}
}
