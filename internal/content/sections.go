// Package content serves the static sections of the marketing page and the
// small UI state machines behind them (testimonial carousel, FAQ accordion,
// stat counters).
package content

import (
	"time"

	"github.com/streetlab/cleaners-booking/internal/catalog"
)

type Testimonial struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Service  string `json:"service"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Stat is one animated counter of the stats strip.
type Stat struct {
	Label   string  `json:"label"`
	Counter Counter `json:"counter"`
}

// Step is one stage of the "how we work" section.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Page bundles everything the front end renders besides the wizard.
type Page struct {
	Services     []catalog.Service      `json:"services"`
	PriceList    []catalog.PriceSection `json:"price_list"`
	Combos       []catalog.Combo        `json:"combos"`
	Zones        []string               `json:"zones"`
	Testimonials []Testimonial          `json:"testimonials"`
	FAQ          []FAQ                  `json:"faq"`
	Stats        []Stat                 `json:"stats"`
	Steps        []Step                 `json:"steps"`
}

// DefaultPage assembles the page from the built-in sections.
func DefaultPage(cat *catalog.Catalog) Page {
	return Page{
		Services:     cat.Services(),
		PriceList:    catalog.PriceList(),
		Combos:       catalog.Combos(),
		Zones:        catalog.Zones(),
		Testimonials: Testimonials(),
		FAQ:          FAQs(),
		Stats:        Stats(),
		Steps:        Steps(),
	}
}

func Testimonials() []Testimonial {
	return []Testimonial{
		{
			Name:     "Maria P.",
			Location: "Târgoviște",
			Service:  "Igienizare Saltea",
			Text:     "Am avut saltea murdară și cu miros neplăcut de la animale. După StreetLab Cleaners, arată ca nouă! Echipa a fost foarte profesionistă, procesul transparent, iar rezultatul excepțional.",
			Rating:   5,
		},
		{
			Name:     "Ion M.",
			Location: "Dâmbovița",
			Service:  "Detailing Auto Complet",
			Text:     "Mașina mea avea interior foarte murdar după 3 ani de utilizare intensă. Au făcut o treabă impecabilă - tapițerie, plafon, plastice, totul arată ca nou! Prețul corect, echipament profesional Kärcher.",
			Rating:   5,
		},
		{
			Name:     "Elena S.",
			Location: "Târgoviște Centru",
			Service:  "Pachet Living Curat",
			Text:     "Colțarul nostru era într-o stare deplorabila după 5 ani. StreetLab mi-a transformat livingul complet! Totul a durat 2 ore și rezultatul m-a lăsat fără cuvinte. Super recomand!",
			Rating:   5,
		},
		{
			Name:     "Andrei T.",
			Location: "Moreni",
			Service:  "Igienizare Calorifere",
			Text:     "Caloriferele erau negre de praf acumulat în ani. După curățare, sunt albe ca noi și casa miroase fantastic. Serviciu rapid și profesionist. Mulțumesc!",
			Rating:   5,
		},
	}
}

func FAQs() []FAQ {
	return []FAQ{
		{
			Question: "Ce echipamente folosiți?",
			Answer:   "Folosim exclusiv echipamente profesionale Kärcher de ultimă generație și produse de curățenie certificate ecologice. Toate produsele sunt sigure pentru copii, animale de companie și persoane cu alergii.",
		},
		{
			Question: "Cât timp durează uscarea după curățare?",
			Answer:   "În funcție de serviciu, timpul de uscare variază între 2-6 ore. Pentru textile și tapițerii: 3-4 ore. Pentru saltele: 4-6 ore. Pentru interior auto: 2-3 ore. Recomandăm aerisirea încăperii pentru uscare mai rapidă.",
		},
		{
			Question: "Oferiți abonamente lunare pentru spații comerciale?",
			Answer:   "Da! Avem pachete speciale pentru spații comerciale, birouri, restaurante și magazine cu discount-uri de până la 20% pentru contracte lunare. Contactați-ne pentru o ofertă personalizată.",
		},
		{
			Question: "Lucrați și în weekend?",
			Answer:   "Desigur! Programul nostru este flexibil: Luni-Vineri: 09:00-20:00, Sâmbătă: 09:00-18:00, Duminică: 10:00-16:00. Puteți alege intervalul orar cel mai potrivit la programare.",
		},
		{
			Question: "Cum se stabilește prețul final?",
			Answer:   "Prețul se stabilește în funcție de gradul de murdărire, tipul materialului și dimensiunea suprafeței. La prima programare, facem o evaluare gratuită și vă comunicăm prețul exact înainte de a începe lucrul. Fără costuri ascunse!",
		},
		{
			Question: "Aveți garanție pentru servicii?",
			Answer:   "Da! Oferim garanție de satisfacție 100%. Dacă nu sunteți mulțumit de rezultat, revenim gratuit în maxim 48 de ore. De asemenea, avem asigurare RCA pentru orice situație neprevăzută.",
		},
	}
}

func Stats() []Stat {
	const d = 2 * time.Second
	return []Stat{
		{Label: "Clienți Mulțumiți", Counter: Counter{End: 500, Duration: d, Suffix: "+"}},
		{Label: "Ore de Servicii", Counter: Counter{End: 10000, Duration: d, Suffix: "+"}},
		{Label: "Rating ⭐⭐⭐⭐⭐", Counter: Counter{End: 98, Duration: d, Suffix: "%"}},
		{Label: "Zone Deservite", Counter: Counter{End: 30, Duration: d, Suffix: "+"}},
	}
}

func Steps() []Step {
	return []Step{
		{Title: "Contactare", Description: "Sună sau completează formularul online pentru programare"},
		{Title: "Evaluare", Description: "Evaluăm suprafața și stabilim prețul exact pe loc"},
		{Title: "Curățare", Description: "Igienizare profesională cu echipament Kärcher de ultimă generație"},
		{Title: "Finalizare", Description: "Verificăm rezultatul împreună și primești garanția noastră"},
	}
}
