package fixtures

import "apsny_travel/internal/domain"

func pics(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, "https://picsum.photos/800/600?random="+id)
	}
	return out
}

// Tours returns a fresh copy of the built-in catalog.
func Tours() []domain.Tour {
	return []domain.Tour{
		{
			ID:        "1",
			Slug:      "lake-ritsa",
			Title:     "Озеро Рица — жемчужина Абхазии",
			ShortDesc: "Легендарное высокогорное озеро в окружении вековых лесов. Голубое озеро, водопады и Юпшарский каньон.",
			DescriptionMD: "## Чего ожидать\n" +
				"Путешествие через самые живописные места Абхазии: Голубое озеро, Юпшарский каньон и озеро Рица на высоте 950 метров.\n\n" +
				"## Программа\n" +
				"* 08:00 — Выезд из Адлера или Сочи.\n" +
				"* 10:00 — Водопад «Девичьи слёзы».\n" +
				"* 12:30 — Озеро Рица (2 часа свободного времени).\n" +
				"* 18:00 — Возвращение.\n\n" +
				"## Важно знать\n" +
				"Для въезда в Абхазию нужен российский паспорт. Детям — свидетельство о рождении.\n",
			Region:        domain.RegionAbkhazia,
			Type:          domain.TypeTour,
			Difficulty:    domain.DifficultyEasy,
			DurationHours: 10,
			PriceFrom:     4500,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=1",
			GalleryImages: pics("11", "12", "13"),
			Tags:          []string{"Природа", "Горы", "Семейный", "Озёра"},
			IsActive:      true,
		},
		{
			ID:        "2",
			Slug:      "gagra-pitsunda",
			Title:     "Гагра и Пицунда — два лица побережья",
			ShortDesc: "Контраст эпох: элегантная Гагра и древняя Пицунда с реликтовыми соснами и чистейшим морем.",
			DescriptionMD: "## Чего ожидать\n" +
				"Гагра принца Ольденбургского и древний храм Пицунды X века.\n\n" +
				"## Программа\n" +
				"* 08:30 — Выезд.\n" +
				"* 10:30 — Старая Гагра: Колоннада, ресторан Гагрипш.\n" +
				"* 13:00 — Пицундский храм и орган.\n" +
				"* 18:00 — Возвращение.\n",
			Region:        domain.RegionAbkhazia,
			Type:          domain.TypeTour,
			Difficulty:    domain.DifficultyEasy,
			DurationHours: 9,
			PriceFrom:     4000,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=2",
			GalleryImages: pics("21", "22"),
			Tags:          []string{"История", "Море", "Архитектура"},
			IsActive:      true,
		},
		{
			ID:        "3",
			Slug:      "sochi-skypark",
			Title:     "SkyPark Сочи: адреналин над ущельем",
			ShortDesc: "Самый длинный подвесной мост в мире, банджи-джампинг и качели над пропастью для смелых.",
			DescriptionMD: "## Чего ожидать\n" +
				"Прогулка по мосту Скайбридж на высоте 207 метров над рекой Мзымта.\n",
			Region:        domain.RegionSochi,
			Type:          domain.TypeTour,
			Difficulty:    domain.DifficultyMedium,
			DurationHours: 6,
			PriceFrom:     3500,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=3",
			GalleryImages: pics("31", "32"),
			Tags:          []string{"Экстрим", "Приключение", "Мост"},
			IsActive:      true,
		},
		{
			ID:        "4",
			Slug:      "rosa-khutor-panorama",
			Title:     "Роза Хутор — на вершину Кавказа",
			ShortDesc: "Подъём на высоту 2320 метров. Заснеженные вершины, альпийские луга и лучшие панорамы.",
			DescriptionMD: "## Чего ожидать\n" +
				"Три очереди канатной дороги поднимут вас от уровня моря к вершинам.\n",
			Region:        domain.RegionKrasnayaPolyana,
			Type:          domain.TypeTour,
			Difficulty:    domain.DifficultyEasy,
			DurationHours: 8,
			PriceFrom:     4500,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=4",
			GalleryImages: pics("41"),
			Tags:          []string{"Горы", "Канатная дорога", "Панорамы"},
			IsActive:      true,
		},
		{
			ID:        "5",
			Slug:      "olympic-park-evening",
			Title:     "Олимпийский парк: шоу фонтанов",
			ShortDesc: "Вечерняя магия Сочи: поющие фонтаны, чаша олимпийского огня и футуристические арены.",
			DescriptionMD: "## Чего ожидать\n" +
				"Свето-музыкальное шоу фонтанов. Струи воды высотой до 70 метров танцуют под музыку.\n",
			Region:        domain.RegionOlympicPark,
			Type:          domain.TypeExcursion,
			Difficulty:    domain.DifficultyEasy,
			DurationHours: 4,
			PriceFrom:     2000,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=5",
			GalleryImages: pics("51"),
			Tags:          []string{"Вечерний", "Шоу", "Семейный"},
			IsActive:      true,
		},
		{
			ID:        "6",
			Slug:      "33-waterfalls",
			Title:     "33 водопада — сокровище Лазаревского",
			ShortDesc: "Каскад водопадов в самшитовом лесу. Поездка на внедорожниках и дегустация мёда.",
			DescriptionMD: "## Чего ожидать\n" +
				"Поездка на ГАЗ-66 по руслу реки и прогулка по деревянным мостикам вдоль каскада.\n",
			Region:        domain.RegionSochi,
			Type:          domain.TypeTour,
			Difficulty:    domain.DifficultyEasy,
			DurationHours: 7,
			PriceFrom:     3500,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=6",
			GalleryImages: pics("61"),
			Tags:          []string{"Природа", "Водопады", "Джиппинг"},
			IsActive:      true,
		},
		{
			// off-season, hidden from the catalog
			ID:            "7",
			Slug:          "new-athos-caves",
			Title:         "Новоафонская пещера и монастырь",
			ShortDesc:     "Подземный поезд, карстовые залы и Новоафонский монастырь.",
			Region:        domain.RegionAbkhazia,
			Type:          domain.TypeExcursion,
			Difficulty:    domain.DifficultyEasy,
			DurationHours: 8,
			PriceFrom:     3800,
			Currency:      "RUB",
			CoverImage:    "https://picsum.photos/800/600?random=7",
			GalleryImages: pics("71"),
			Tags:          []string{"История", "Пещеры"},
			IsActive:      false,
		},
	}
}

func Reviews() []domain.Review {
	return []domain.Review{
		{
			ID:      "r1",
			TourID:  "1",
			Author:  "Марина К.",
			Rating:  5,
			Date:    "2024-02-10",
			Comment: "Поездка на Рицу превзошла ожидания! Водитель внимательный, гид делился историями. Обязательно поедем снова летом.",
		},
		{
			ID:      "r2",
			TourID:  "1",
			Author:  "Илья П.",
			Rating:  4,
			Date:    "2024-03-02",
			Comment: "Красивейшие виды, но дорога длинная. Зато остановки у Голубого озера и Юпшарского каньона того стоят.",
		},
		{
			ID:      "r3",
			TourID:  "2",
			Author:  "Светлана Р.",
			Rating:  5,
			Date:    "2024-01-18",
			Comment: "Гагра шикарна зимой, мало людей и мягкий климат. Понравился рассказ про историю Пицунды и органный концерт.",
		},
		{
			ID:      "r4",
			TourID:  "3",
			Author:  "Дмитрий Л.",
			Rating:  5,
			Date:    "2024-04-22",
			Comment: "Адреналин зашкаливал! Команда следила за безопасностью, а виды с моста просто космос.",
		},
	}
}
